package hub

import "testing"

func TestParseURL(t *testing.T) {
	cases := []struct {
		in   string
		want Components
	}{
		{"https://github.com/i2mint/dol", Components{Owner: "i2mint", Repo: "dol"}},
		{"https://www.github.com/i2mint/dol/", Components{Owner: "i2mint", Repo: "dol"}},
		{"github.com/i2mint/dol", Components{Owner: "i2mint", Repo: "dol"}},
		{"https://github.com/i2mint/dol.git", Components{Owner: "i2mint", Repo: "dol"}},
		{"git@github.com:i2mint/dol.git", Components{Owner: "i2mint", Repo: "dol"}},
		{"git@github.com:i2mint/dol", Components{Owner: "i2mint", Repo: "dol"}},
		{
			"https://github.com/i2mint/dol/tree/master",
			Components{Owner: "i2mint", Repo: "dol", Branch: "master"},
		},
		{
			"https://github.com/i2mint/dol/tree/main/docs/api",
			Components{Owner: "i2mint", Repo: "dol", Branch: "main", Path: "docs/api"},
		},
		{
			"https://github.com/i2mint/dol/blob/main/README.md",
			Components{Owner: "i2mint", Repo: "dol", Branch: "main", Path: "README.md"},
		},
	}
	for _, c := range cases {
		got, err := ParseURL(c.in)
		if err != nil {
			t.Errorf("ParseURL(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseURL(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseURLRejectsNonGitHub(t *testing.T) {
	for _, in := range []string{
		"https://gitlab.com/i2mint/dol",
		"https://github.com/justowner",
		"https://evil.example/github.com/i2mint/dol",
		"https://github.com.evil.example/i2mint/dol",
		"i2mint/dol",
		"",
	} {
		if _, err := ParseURL(in); err == nil {
			t.Errorf("ParseURL(%q) should fail", in)
		}
	}
}

func TestGenerators(t *testing.T) {
	c := Components{Owner: "i2mint", Repo: "dol", Branch: "main"}
	if got := c.Stub(); got != "i2mint/dol" {
		t.Errorf("Stub() = %q", got)
	}
	if got := c.HTTPSURL(); got != "https://github.com/i2mint/dol" {
		t.Errorf("HTTPSURL() = %q", got)
	}
	if got := c.SSHURL(); got != "git@github.com:i2mint/dol.git" {
		t.Errorf("SSHURL() = %q", got)
	}
}

func TestParseStub(t *testing.T) {
	got, err := ParseStub("i2mint/dol")
	if err != nil {
		t.Fatalf("ParseStub: %v", err)
	}
	if got != (Components{Owner: "i2mint", Repo: "dol"}) {
		t.Errorf("got %+v", got)
	}

	for _, bad := range []string{"dol", "a/b/c", "/", ""} {
		if _, err := ParseStub(bad); err == nil {
			t.Errorf("ParseStub(%q) should fail", bad)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, start := range []string{
		"https://github.com/i2mint/dol",
		"git@github.com:i2mint/dol.git",
	} {
		c, err := ParseURL(start)
		if err != nil {
			t.Fatalf("ParseURL(%q): %v", start, err)
		}
		https, err := ParseURL(c.HTTPSURL())
		if err != nil {
			t.Fatalf("reparse https: %v", err)
		}
		ssh, err := ParseURL(c.SSHURL())
		if err != nil {
			t.Fatalf("reparse ssh: %v", err)
		}
		if https.Stub() != c.Stub() || ssh.Stub() != c.Stub() {
			t.Errorf("round trip lost the stub for %q", start)
		}
	}
}
