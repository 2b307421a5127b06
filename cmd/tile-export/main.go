package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-homedir"

	"github.com/voidshard/tilegen"
)

const desc = `Writes the tiles stored in a tilegen sqlite database out as PNG files.`

var cli struct {
	// where to find input database file
	Input  string `short:"i" required:"" help:"input tile database file"`
	Output string `short:"o" default:"tiles" help:"directory to write PNGs to. Existing files of the same name are overwritten."`

	// only export one terrain's set
	Terrain string `short:"t" help:"only export the tile set of this terrain"`
}

// fileExists checks if file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

func main() {
	kong.Parse(&cli, kong.Name("tile-export"), kong.Description(desc))

	input, err := homedir.Expand(cli.Input)
	if err != nil {
		panic(err)
	}
	output, err := homedir.Expand(cli.Output)
	if err != nil {
		panic(err)
	}

	if !fileExists(input) {
		panic(fmt.Sprintf("input file not found: %s", input))
	}

	db, err := tilegen.OpenSQLiteSink(input)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	var names []string
	if cli.Terrain == "" {
		names, err = db.Names()
	} else {
		names, err = db.List(cli.Terrain)
	}
	if err != nil {
		panic(err)
	}

	out := tilegen.NewFileSink(output)
	for _, name := range names {
		img, err := db.Image(name)
		if err != nil {
			panic(err)
		}

		where, err := out.Write(name, img)
		if err != nil {
			panic(err)
		}
		fmt.Println("wrote", where)
	}

	fmt.Printf("exported %d tiles\n", len(names))
}
