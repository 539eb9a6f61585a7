package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/duet/api"
	"github.com/sarchlab/duet/core"
	"github.com/sarchlab/duet/program"
	"github.com/tebeka/atexit"
)

//go:embed duet.duetasm
var duetProgram string

func main() {
	f, err := os.Create("duet.json.log")
	if err != nil {
		panic(err)
	}
	atexit.Register(func() { f.Close() })

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	prog := program.MustParseString(duetProgram)

	s := api.DriverBuilder{}.BuildScheduler("Duet", prog)

	result, err := s.Run()
	if err != nil {
		fmt.Println(err)
		atexit.Exit(1)
	}

	fmt.Println(result.Render())
	core.PrintState(os.Stdout, s.Machines()...)

	atexit.Exit(0)
}
