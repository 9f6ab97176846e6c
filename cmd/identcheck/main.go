package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/pkg/identifier"
)

// report is one line of -json output
type report struct {
	Input     string          `json:"input"`
	Valid     bool            `json:"isValid"`
	Type      identifier.Type `json:"type"`
	Message   string          `json:"message,omitempty"`
	Formatted string          `json:"formatted"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 when every identifier is valid, 1 when any is invalid and
// 2 on usage or input errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("identcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outputJSON := fs.Bool("json", false, "Output one JSON object per identifier")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: identcheck [-json] [identifier ...]\n\n")
		fmt.Fprintf(stderr, "Classifies each identifier as email, rut, dni or username.\n")
		fmt.Fprintf(stderr, "With no arguments, identifiers are read from stdin, one per line.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 2
		}
	}

	enc := json.NewEncoder(stdout)
	status := 0
	for _, in := range inputs {
		res := identifier.Validate(in)
		r := report{
			Input:     in,
			Valid:     res.Valid,
			Type:      res.Type,
			Message:   res.Message,
			Formatted: identifier.Format(in),
		}
		if !r.Valid {
			status = 1
		}

		if *outputJSON {
			if err := enc.Encode(r); err != nil {
				fmt.Fprintf(stderr, "Error writing output: %v\n", err)
				return 2
			}
			continue
		}

		verdict := "valid"
		detail := r.Formatted
		if !r.Valid {
			verdict = "invalid"
			detail = r.Message
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", r.Input, r.Type, verdict, detail)
	}
	return status
}
