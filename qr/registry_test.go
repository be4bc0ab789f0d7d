package qr

import "testing"

func TestGetReturnsDefault(t *testing.T) {
	reg := NewRegistry("http://localhost:3000/upload.html")
	if got := reg.Get(); got != "http://localhost:3000/upload.html" {
		t.Errorf("Get() = %q, want default", got)
	}
}

func TestSetValidURL(t *testing.T) {
	reg := NewRegistry("http://localhost:3000/upload.html")

	got, err := reg.Set("https://party.example.com/upload")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got != "https://party.example.com/upload" {
		t.Errorf("Set returned %q", got)
	}
	if reg.Get() != "https://party.example.com/upload" {
		t.Errorf("Get() = %q after Set", reg.Get())
	}
}

func TestSetInvalidURLKeepsPrevious(t *testing.T) {
	reg := NewRegistry("http://localhost:3000/upload.html")

	for _, bad := range []string{
		"not a url",
		"",
		"/relative/path",
		"ftp://example.com/file",
		"http://",
	} {
		if _, err := reg.Set(bad); err != ErrInvalidURL {
			t.Errorf("Set(%q) = %v, want ErrInvalidURL", bad, err)
		}
	}

	if reg.Get() != "http://localhost:3000/upload.html" {
		t.Errorf("Get() = %q, previous value must survive failed sets", reg.Get())
	}
}
