// Command hufgram compresses UTF-8 text files into .huf archives and
// extracts them again. The group size -n is the number of Unicode code
// points per token; decoding requires the same -n the archive was created
// with.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hufgram/hufgram"
)

type cliCommand struct {
	fn       func(args []string) error
	flagset  *flag.FlagSet
	argsdesc string
	desc     string
}

// encodeFile compresses input into input+".huf" and returns the archive
// path, the elapsed encode time and the input/output sizes.
func encodeFile(input string, groupSize int) (string, time.Duration, int64, int64, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", 0, 0, 0, err
	}

	enc := hufgram.NewEncoder(
		hufgram.WithGroupSize(groupSize),
		hufgram.WithName(filepath.Base(input)),
	)

	start := time.Now()
	archive, err := enc.Encode(string(data))
	if err != nil {
		return "", 0, 0, 0, err
	}

	output := input + ".huf"
	f, err := os.Create(output)
	if err != nil {
		return "", 0, 0, 0, err
	}
	written, err := archive.WriteTo(f)
	if err != nil {
		f.Close()
		os.Remove(output)
		return "", 0, 0, 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(output)
		return "", 0, 0, 0, err
	}
	return output, time.Since(start), int64(len(data)), written, nil
}

// decodeFile extracts an archive next to it and returns the output path and
// elapsed time. Nothing is written unless the whole decode succeeds.
func decodeFile(input string, groupSize int) (string, time.Duration, error) {
	f, err := os.Open(input)
	if err != nil {
		return "", 0, err
	}
	var archive hufgram.Archive
	_, err = archive.ReadFrom(f)
	f.Close()
	if err != nil {
		return "", 0, err
	}

	start := time.Now()
	dec := hufgram.NewDecoder(hufgram.WithGroupSize(groupSize))
	text, err := dec.Decode(&archive)
	if err != nil {
		return "", 0, err
	}

	// The stored name comes from the archive; strip any directory part so a
	// crafted header cannot write outside the archive's directory.
	name := filepath.Base(archive.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "decoded.out"
	}
	output := uniquePath(filepath.Dir(input), name)
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return "", 0, err
	}
	return output, time.Since(start), nil
}

func commandEncode(input string, groupSize int) error {
	output, elapsed, inSize, outSize, err := encodeFile(input, groupSize)
	if err != nil {
		return err
	}
	denom := inSize
	if denom < 1 {
		denom = 1
	}
	fmt.Println("OK: created archive:", output)
	fmt.Println("Compression time:", elapsed.Milliseconds(), "ms")
	fmt.Printf("Size: %d bytes -> %d bytes\n", inSize, outSize)
	fmt.Printf("Ratio: %.4f\n", float64(outSize)/float64(denom))
	return nil
}

func commandDecode(input string, groupSize int) error {
	output, elapsed, err := decodeFile(input, groupSize)
	if err != nil {
		return err
	}
	fmt.Println("OK: extracted file:", output)
	fmt.Println("Decompression time:", elapsed.Milliseconds(), "ms")
	return nil
}

func printCmdUsage(name string, cmd cliCommand) {
	fmt.Printf("%s %s - %s\n", name, cmd.argsdesc, cmd.desc)
	count := 0
	cmd.flagset.VisitAll(func(_ *flag.Flag) {
		count++
	})
	if count != 0 {
		cmd.flagset.Usage()
	}
}

func printUsage(commands map[string]cliCommand) {
	fmt.Println()
	fmt.Println("Usage: hufgram <command> [arguments]")
	fmt.Println("Commands available:")

	names := []string{}
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("    %-10s %s\n", name, commands[name].desc)
	}
}

func main() {
	encodeFlags := flag.NewFlagSet("encode", flag.ExitOnError)
	decodeFlags := flag.NewFlagSet("decode", flag.ExitOnError)
	selftestFlags := flag.NewFlagSet("selftest", flag.ExitOnError)
	sweepFlags := flag.NewFlagSet("sweep", flag.ExitOnError)
	helpFlags := flag.NewFlagSet("help", flag.ExitOnError)

	encodeOptN := encodeFlags.Int("n", 2, "code points per token")
	decodeOptN := decodeFlags.Int("n", 2, "code points per token (must match the archive)")
	selftestOptN := selftestFlags.Int("n", 2, "code points per token")
	sweepOptMin := sweepFlags.Int("min", 1, "smallest group size to try")
	sweepOptMax := sweepFlags.Int("max", 8, "largest group size to try")

	var commands map[string]cliCommand

	cmdEncode := func(args []string) error {
		encodeFlags.Parse(args)
		files := encodeFlags.Args()
		if len(files) != 1 {
			fmt.Println("'encode' command: expected <input> argument")
			os.Exit(1)
		}
		return commandEncode(files[0], *encodeOptN)
	}

	cmdDecode := func(args []string) error {
		decodeFlags.Parse(args)
		files := decodeFlags.Args()
		if len(files) != 1 {
			fmt.Println("'decode' command: expected <archive> argument")
			os.Exit(1)
		}
		return commandDecode(files[0], *decodeOptN)
	}

	cmdSelfTest := func(args []string) error {
		selftestFlags.Parse(args)
		files := selftestFlags.Args()
		path := ""
		if len(files) > 0 {
			path = files[0]
		}
		return commandSelfTest(path, *selftestOptN)
	}

	cmdSweep := func(args []string) error {
		sweepFlags.Parse(args)
		files := sweepFlags.Args()
		if len(files) != 2 {
			fmt.Println("'sweep' command: expected <input> <output.svg> arguments")
			os.Exit(1)
		}
		return commandSweep(files[0], files[1], *sweepOptMin, *sweepOptMax)
	}

	cmdHelp := func(args []string) error {
		helpFlags.Parse(args)
		names := helpFlags.Args()
		if len(names) > 0 {
			cmd, pres := commands[names[0]]
			if !pres {
				fmt.Println("error: unknown command for help")
				printUsage(commands)
				os.Exit(1)
			}
			printCmdUsage(names[0], cmd)
		} else {
			printUsage(commands)
		}
		return nil
	}

	commands = map[string]cliCommand{
		"encode":   {cmdEncode, encodeFlags, "-n N <input>", "compress a text file into <input>.huf"},
		"decode":   {cmdDecode, decodeFlags, "-n N <archive>", "extract an archive next to it"},
		"selftest": {cmdSelfTest, selftestFlags, "[path]", "round-trip a file (or a built-in sample) and compare"},
		"sweep":    {cmdSweep, sweepFlags, "<input> <output.svg>", "chart archive size across group sizes"},
		"help":     {cmdHelp, helpFlags, "", "list commands or describe a single command"},
	}

	if len(os.Args) < 2 {
		fmt.Println("error: expected a command")
		printUsage(commands)
		os.Exit(1)
	}

	cmd, pres := commands[os.Args[1]]
	if !pres {
		fmt.Println("error: unknown command")
		printUsage(commands)
		os.Exit(1)
	}

	if err := cmd.fn(os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
