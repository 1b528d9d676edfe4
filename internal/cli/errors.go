package cli

import "fmt"

type argError struct {
	name string
	text string
	want string
}

func (e argError) Error() string {
	return fmt.Sprintf("invalid %s %q: want %s", e.name, e.text, e.want)
}
