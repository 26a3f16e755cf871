package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Harvard University", "harvard-university"},
		{"  University of Toronto  ", "university-of-toronto"},
		{"M.Sc. Computer Science", "msc-computer-science"},
		{"already-a-slug", "already-a-slug"},
		{"snake_case_name", "snake-case-name"},
		{"multiple   spaces", "multiple-spaces"},
		{"double--hyphen", "double--hyphen"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"C++ & Systems (Advanced)", "c-systems-advanced"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Harvard University",
		"M.Sc. Computer Science",
		"snake_case_name",
		"mixed -_ separators",
		"",
	}

	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
