package recordcsv_test

import (
	"context"
	"fmt"
	"os"

	"github.com/keboola/recordcsv/pkg/recordcsv"
)

type Person struct {
	Name string
	Age  *int
}

type Employee struct {
	Person
	Salary float64 `csv:"salary"`
	Note   string  `csv:"-"`
}

func ExampleSerialize() {
	age := 30
	records := []any{
		Person{Name: "Ann", Age: &age},
		Employee{Person: Person{Name: "Bob"}, Salary: 1.5, Note: "skipped"},
	}

	if err := recordcsv.Serialize(context.Background(), os.Stdout, records); err != nil {
		fmt.Println(err)
	}

	// Output:
	// name,age,salary
	// Ann,30,
	// Bob,,1.5
}

func ExampleNew() {
	cfg := recordcsv.NewConfig()
	cfg.Delimiter = ";"

	s, err := recordcsv.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	err = s.SetLineTerminator(";")
	fmt.Println(recordcsv.IsConfigurationError(err))

	err = s.Serialize(context.Background(), os.Stdout, nil)
	fmt.Println(recordcsv.IsValidationError(err), err)

	// Output:
	// true
	// true nothing to serialize, no records found
}

func ExampleNewSchemaIntrospector() {
	schema, err := recordcsv.ParseSchema(context.Background(), []byte(`
types:
  - name: Shape
    attributes:
      - {name: color, type: enum}
  - name: Circle
    parent: Shape
    attributes:
      - {name: radius, type: float}
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	introspector, err := recordcsv.NewSchemaIntrospector(schema)
	if err != nil {
		fmt.Println(err)
		return
	}

	records := []any{
		recordcsv.Dynamic{Type: "Circle", Values: map[string]any{"color": "RED", "radius": 2.5}},
		recordcsv.Dynamic{Type: "Shape", Values: map[string]any{"color": nil}},
	}

	if err := recordcsv.Serialize(context.Background(), os.Stdout, records, recordcsv.WithIntrospector(introspector)); err != nil {
		fmt.Println(err)
	}

	// Output:
	// radius,color
	// 2.5,RED
	// ,
}
