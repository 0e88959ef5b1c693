// Copyright 2025, The mipsim Authors

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/mipsim/mipsim/emulator"
	"github.com/mipsim/mipsim/translate"
)

var f = translate.From

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var regs bool
	var list bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "i", "", "Raw memory image to load instead")
	flag.StringVar(&output, "o", "", "Save the memory image to this file")
	flag.BoolVar(&save, "s", false, "Save only, do not execute")
	flag.BoolVar(&regs, "r", false, "Dump the registers at exit")
	flag.BoolVar(&list, "l", false, "List the directives and instructions")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if list {
		for keyword := range emu.Assembler.Keywords() {
			fmt.Println(keyword)
		}
		return
	}

	switch {
	case len(compile) != 0:
		code, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		emu.Code = string(code)
		err = emu.Reset()
		color := term.IsTerminal(int(os.Stderr.Fd()))
		errors := report(os.Stderr, compile, emu.Code, emu.Result, verbose, color)
		if err != nil {
			log.Fatal(f("%v: %d error(s)", compile, errors))
		}
	case len(image) != 0:
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		err = emu.LoadImage(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	default:
		log.Fatalf("%v: one of -c or -i is required", os.Args[0])
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = emu.SaveImage(ouf)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := emu.Run(ctx)
	stop()

	if regs {
		fmt.Print(emu.Cpu.String())
	}

	if err != nil {
		log.Fatal(err)
	}
}
