package geocode

import "testing"

func TestBuildQuery(t *testing.T) {
	q := BuildQuery("San Rafael", "Mendoza")
	if q != "San Rafael, Mendoza, Argentina" {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestBuildQueryWithoutProvince(t *testing.T) {
	q := BuildQuery("San Rafael", "")
	if q != "San Rafael, Argentina" {
		t.Fatalf("unexpected query: %s", q)
	}
}
