package main

import (
	_ "embed"
	"flag"
	"log"
	"os"

	"github.com/milk9111/wallkick/scene"
)

//go:embed timeline.yaml
var defaultTimeline []byte

func main() {
	timelinePath := flag.String("timeline", "", "timeline YAML to replay (defaults to the built-in run)")
	levelName := flag.String("level", "", "override the timeline's level")
	flag.Parse()

	data := defaultTimeline
	if *timelinePath != "" {
		var err error
		data, err = os.ReadFile(*timelinePath)
		if err != nil {
			log.Fatalf("read timeline: %v", err)
		}
	}

	tl, err := ParseTimeline(data)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		tl.Level = *levelName
	}

	p := &player{}
	s, err := scene.New(tl.Options(p))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if err := tl.Run(s, p, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
