package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"tagged+promo@example.io",
		"digits123@sub.example.com",
	}
	for _, email := range valid {
		if ok, msg := Email(email); !ok {
			t.Errorf("Email(%q) rejected: %s", email, msg)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		".leading@example.com",
		"trailing.@example.com",
		"double..dot@example.com",
		"user@-example.com",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		if ok, _ := Email(email); ok {
			t.Errorf("Email(%q) accepted, want rejection", email)
		}
	}
}

func TestPassword(t *testing.T) {
	if ok, msg := Password("Str0ngPassw0rd!"); !ok {
		t.Fatalf("strong password rejected: %s", msg)
	}

	cases := []struct {
		password string
		wantMsg  string
	}{
		{"Sh0rt!", "Password must be at least 12 characters"},
		{"alllowercase1!", "Password must contain at least one uppercase letter"},
		{"ALLUPPERCASE1!", "Password must contain at least one lowercase letter"},
		{"NoDigitsHere!!", "Password must contain at least one digit"},
		{"NoSpecials1234", "Password must contain at least one special character"},
	}
	for _, tc := range cases {
		ok, msg := Password(tc.password)
		if ok {
			t.Errorf("Password(%q) accepted, want rejection", tc.password)
			continue
		}
		if msg != tc.wantMsg {
			t.Errorf("Password(%q) message = %q, want %q", tc.password, msg, tc.wantMsg)
		}
	}
}

func TestShippingAddress(t *testing.T) {
	if ok, _ := ShippingAddress("123 Commerce Street, Springfield, IL 62704"); !ok {
		t.Error("plausible address rejected")
	}
	if ok, _ := ShippingAddress(""); ok {
		t.Error("empty address accepted")
	}
	if ok, _ := ShippingAddress("too short"); ok {
		t.Error("short address accepted")
	}
	if ok, _ := ShippingAddress(strings.Repeat("x", 501)); ok {
		t.Error("oversized address accepted")
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`  <script>alert("x")</script> & more  `)
	want := `&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; more`
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
	if got := Sanitize("plain text"); got != "plain text" {
		t.Errorf("Sanitize(plain) = %q", got)
	}
}
