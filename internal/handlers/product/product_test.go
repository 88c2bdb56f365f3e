package product

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Mango Pickle", "mango-pickle"},
		{"  Masala Chai  500g ", "masala-chai-500g"},
		{"Ghee (Pure Desi)", "ghee-pure-desi"},
		{"UPPER case", "upper-case"},
	}

	for _, tc := range cases {
		if got := slugify(tc.name); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
