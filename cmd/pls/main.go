/*
Command pls offers the Pāli language services on the command line.

	pls [flags] compare word1 word2   compare in Pāli alphabetical order
	pls [flags] length text           number of Pāli letters
	pls [flags] sort word...          sort words in Pāli alphabetical order
	pls [flags] convert text          render Roman text in a script
	pls [flags] roman text            read script text back to Roman
	pls [flags] query sql             run SQL statements on the database
	pls [flags] tquery sql            like query, with transliterated results

Results are printed as JSON.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/pali"
	"github.com/npillmayer/pali/dal"
	"github.com/npillmayer/pali/dal/sqlite"
	"github.com/npillmayer/pali/script"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pls: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("pls", flag.ContinueOnError)
	configFile := flags.String("config", "", "YAML configuration file")
	scriptName := flags.String("script", "", "target script ("+strings.Join(script.Names(), ", ")+")")
	schemeName := flags.String("scheme", "", "spelling scheme of Roman input (iast, velthuis)")
	database := flags.String("db", "", "SQLite database of inflected forms")
	traceLevel := flags.String("trace", "", "trace level (Debug, Info, Error)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: pls [flags] compare|length|sort|convert|roman|query|tquery args...\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	conf, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	override(&conf.Script, *scriptName)
	override(&conf.Scheme, *schemeName)
	override(&conf.Database, *database)
	override(&conf.Trace, *traceLevel)
	level := tracing.TraceLevelFromString(conf.Trace)
	for _, key := range []string{"pali", "pali.script", "pali.dal", "pali.sqlite"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("missing command")
	}
	result, err := execute(conf, flags.Arg(0), flags.Args()[1:])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

func override(setting *string, flagValue string) {
	if flagValue != "" {
		*setting = flagValue
	}
}

func execute(conf Config, cmd string, args []string) (any, error) {
	scheme, ok := pali.SchemeByName(conf.Scheme)
	if !ok {
		return nil, errors.Errorf("unknown spelling scheme %q", conf.Scheme)
	}
	alphabet, err := pali.NewAlphabet(scheme)
	if err != nil {
		return nil, err
	}
	need := func(n int) error {
		if len(args) != n {
			return errors.Errorf("%s expects %d argument(s), got %d", cmd, n, len(args))
		}
		return nil
	}
	switch cmd {
	case "compare":
		if err := need(2); err != nil {
			return nil, err
		}
		return alphabet.Compare(args[0], args[1]), nil
	case "length":
		if err := need(1); err != nil {
			return nil, err
		}
		return alphabet.Length(args[0]), nil
	case "sort":
		words := append([]string{}, args...)
		alphabet.Sort(words)
		return words, nil
	case "convert", "roman":
		if err := need(1); err != nil {
			return nil, err
		}
		conv, err := converter(conf, alphabet)
		if err != nil {
			return nil, err
		}
		if cmd == "roman" {
			return conv.ToRoman(args[0]), nil
		}
		return conv.Convert(args[0]), nil
	case "query", "tquery":
		if err := need(1); err != nil {
			return nil, err
		}
		return query(conf, alphabet, args[0], cmd == "tquery")
	}
	return nil, errors.Errorf("unknown command %q", cmd)
}

func converter(conf Config, alphabet *pali.Alphabet) (*script.Converter, error) {
	table, ok := script.Lookup(conf.Script)
	if !ok {
		return nil, errors.Errorf("unknown script %q", conf.Script)
	}
	return script.NewConverter(alphabet, table)
}

func query(conf Config, alphabet *pali.Alphabet, sql string, transliterate bool) (any, error) {
	if conf.Database == "" {
		return nil, errors.New("no database configured")
	}
	store, err := sqlite.Open(conf.Database)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	var opts []dal.Option
	if transliterate {
		conv, err := converter(conf, alphabet)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dal.WithTransliterator(conv))
	}
	svc, err := dal.New(store, opts...)
	if err != nil {
		return nil, err
	}
	var tables []dal.Table
	if transliterate {
		tables, err = svc.ExecuteStatementsWithTransliteration(sql)
	} else {
		tables, err = svc.ExecuteStatements(sql)
	}
	if err != nil {
		return nil, err
	}
	results := make([][][]string, len(tables))
	for i, t := range tables {
		results[i] = t.Strings()
	}
	return results, nil
}
