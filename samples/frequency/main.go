package main

import (
	_ "embed"
	"fmt"

	"github.com/sarchlab/duet/api"
	"github.com/sarchlab/duet/program"
	"github.com/tebeka/atexit"
)

//go:embed frequency.duetasm
var frequencyProgram string

func main() {
	driver := api.DriverBuilder{}.
		WithMaxSteps(1000).
		Build("Driver")

	freq, err := driver.RunSolo(program.MustParseString(frequencyProgram))
	if err != nil {
		fmt.Println(err)
		atexit.Exit(1)
	}

	fmt.Println(freq)

	atexit.Exit(0)
}
