package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/runbeat/internal/config"
)

func main() {
	flags, err := config.ParseFlags(os.Args[1:])
	if nil != err {
		log.Fatalln(err)
	}

	p := &Program{Flags: flags}
	if err := p.Init(); nil != err {
		p.Deinit()
		log.Fatalln(err)
	}
	err = p.Run()
	p.Deinit()
	if nil != err {
		log.Fatalln(err)
	}
}
