package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"31.635", "31.64"},
		{"31.634", "31.63"},
		{"2.5", "2.50"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"10", "10.00"},
	}
	for _, tc := range cases {
		if got := Round2(MustParse(tc.in)).StringFixed(2); got != tc.want {
			t.Errorf("Round2(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestFromFloat(t *testing.T) {
	if got := FromFloat(39.99).StringFixed(2); got != "39.99" {
		t.Errorf("FromFloat(39.99) = %s", got)
	}
}
