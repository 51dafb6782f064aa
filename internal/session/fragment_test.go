package session

import "testing"

func TestParseFragmentToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://app/callback#access_token=ya29.abc&token_type=Bearer&expires_in=3599", "ya29.abc", true},
		{"#access_token=tok123", "tok123", true},
		{"access_token=tok123&scope=classroom", "tok123", true},
		{"https://app/callback?code=123", "", false},
		{"token_type=Bearer", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseFragmentToken(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseFragmentToken(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
