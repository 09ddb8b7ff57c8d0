package people

import "fmt"

type Person struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Age  int    `json:"age" yaml:"age" toml:"age"`
}

func (p Person) String() string {
	return fmt.Sprintf("[Person: %s : %d]", p.Name, p.Age)
}
