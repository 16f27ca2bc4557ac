package integrations_test

import (
	"fmt"

	"github.com/matzehuels/lyricspiral/pkg/integrations"
)

func ExampleURLEncode() {
	fmt.Println(integrations.URLEncode("Simon & Garfunkel"))
	fmt.Println(integrations.URLEncode("AC/DC"))
	// Output:
	// Simon+%26+Garfunkel
	// AC%2FDC
}

func ExampleNormalizeQuery() {
	fmt.Println(integrations.NormalizeQuery("  Bohemian   RHAPSODY "))
	// Output:
	// bohemian rhapsody
}
