package langconf

import "testing"

func TestStaticDefaults(t *testing.T) {
	r := NewStatic()
	if _, ok := r.Get("plaintext"); !ok {
		t.Fatalf("Get(plaintext) = not found, want a default entry")
	}
	if _, ok := r.Get("nonexistent"); ok {
		t.Fatalf("Get(nonexistent) = found, want not found")
	}
}

func TestRegisterOverrides(t *testing.T) {
	r := NewStatic()
	r.Register(Config{LanguageID: "go", Brackets: nil})
	c, ok := r.Get("go")
	if !ok || c.Brackets != nil {
		t.Fatalf("Get(go) = %#v, %v, want overridden empty brackets", c, ok)
	}
}
