package validate

import "testing"

func TestOneOf(t *testing.T) {
	allowed := []string{"Open", "Closed"}

	if !OneOf(allowed, "Open") {
		t.Error("expected Open to match")
	}
	if OneOf(allowed, "open") {
		t.Error("comparison must be case-sensitive")
	}
	if OneOf(allowed, "") {
		t.Error("empty value must never match")
	}
	if OneOf(nil, "Open") {
		t.Error("nil allow-list must never match")
	}
}

func TestStateCode(t *testing.T) {
	for _, code := range []string{"NY", "CA", "DC", "PR", "GU"} {
		if !StateCode(code) {
			t.Errorf("%s should be accepted", code)
		}
	}
	for _, code := range []string{"ny", "XX", "N", "NYC", ""} {
		if StateCode(code) {
			t.Errorf("%s should be rejected", code)
		}
	}
}

func TestWhitespaceOnly(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n ", "  \r"} {
		if !WhitespaceOnly(s) {
			t.Errorf("%q should count as blank", s)
		}
	}
	if WhitespaceOnly(" x ") {
		t.Error("a string with content is not blank")
	}
}

func TestVersion(t *testing.T) {
	for _, s := range []string{"v1.0.0", "v0.0.1", "v12.34.56"} {
		if !Version(s) {
			t.Errorf("%s should be accepted", s)
		}
	}
	for _, s := range []string{"1.0.0", "v1.0", "v1.0.0.0", "v1.0.x", "V1.0.0", "v1.0.0 "} {
		if Version(s) {
			t.Errorf("%s should be rejected", s)
		}
	}
}

func TestIPAddress(t *testing.T) {
	for _, s := range []string{"127.0.0.1", "10.0.0.255", "::1", "2001:db8::68"} {
		if !IPAddress(s) {
			t.Errorf("%s should parse", s)
		}
	}
	for _, s := range []string{"", "localhost", "256.1.1.1", "10.0.0.1:8080"} {
		if IPAddress(s) {
			t.Errorf("%s should not parse", s)
		}
	}
}

func TestZipCode(t *testing.T) {
	for _, s := range []string{"12345", "123456789"} {
		if !ZipCode(s) {
			t.Errorf("%s should be accepted", s)
		}
	}
	for _, s := range []string{"1234", "1234567890", "12345-6789", "abcde", ""} {
		if ZipCode(s) {
			t.Errorf("%s should be rejected", s)
		}
	}
}
