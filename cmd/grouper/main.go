/*
Grouper reads a grammar expressed in grouper's BNF-like meta-language and
builds its canonical LR(1) ACTION/GOTO tables.

Usage:

	grouper [flags]

The flags are:

	-v, --version
		Give the current version of grouper and then exit.

	-g, --grammar FILE
		The BNF source file to read. Defaults to "grammar.bnf".

	-c, --config FILE
		Optional TOML config file overriding grammar/out-dir/cache settings.

	-o, --out DIR
		Directory to write the artifact dump and table rendering to.
		Defaults to "build".

	-i, --interactive
		Drop into a REPL that accepts BNF declarations line by line and,
		after each one, reports the rule and state counts or the first
		error (including any table conflict). FIRST/FOLLOW sets are not
		printed.

	--cache
		Round-trip the built artifact through a binary cache file keyed by
		a content hash of the grammar source, skipping rebuild when the
		source is unchanged.
*/
package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/dekarrin/grouper/analysis"
	"github.com/dekarrin/grouper/artifact"
	"github.com/dekarrin/grouper/automaton"
	"github.com/dekarrin/grouper/bnfread"
	"github.com/dekarrin/grouper/config"
	"github.com/dekarrin/grouper/grammar"
	"github.com/dekarrin/grouper/internal/shell"
	"github.com/dekarrin/grouper/internal/version"
	"github.com/dekarrin/grouper/lrtable"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitBuildError indicates the grammar failed to read or compile.
	ExitBuildError

	// ExitInitError indicates an issue setting up the run (bad flags, i/o
	// failures unrelated to the grammar itself).
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile     = pflag.StringP("grammar", "g", "grammar.bnf", "The BNF source file to read")
	configFile      = pflag.StringP("config", "c", "", "Optional TOML config file")
	outDir          = pflag.StringP("out", "o", "", "Directory to write the artifact dump and table rendering to")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Drop into an interactive BNF shell")
	flagCache       = pflag.Bool("cache", false, "Cache the built artifact, keyed by a content hash of the grammar source")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		cfg = loaded
	}
	if pflag.CommandLine.Changed("grammar") {
		cfg.Build.Grammar = *grammarFile
	}
	if *outDir != "" {
		cfg.Build.OutDir = *outDir
	}
	if pflag.CommandLine.Changed("cache") {
		cfg.Cache.Enabled = *flagCache
	}

	if *flagInteractive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitBuildError
		}
		return
	}

	if err := runBuild(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitBuildError
		return
	}
}

func runBuild(cfg config.Config) error {
	src, err := os.ReadFile(cfg.Build.Grammar)
	if err != nil {
		return err
	}

	var bundle artifact.Bundle
	var cacheHit bool

	cacheKey := contentCacheKey(src)
	cachePath := filepath.Join(cfg.Cache.Path, cacheKey.String()+".rezi")

	if cfg.Cache.Enabled {
		if cached, err := loadCachedBundle(cachePath); err == nil {
			bundle = cached
			cacheHit = true
		}
	}

	var table *lrtable.Table
	var g *grammar.Grammar
	var follow analysis.FollowSets

	if !cacheHit {
		result, err := bnfread.Read(src)
		if err != nil {
			return err
		}
		g = result.Grammar

		first := analysis.ComputeFirst(g)
		follow = analysis.ComputeFollow(g, first)

		coll, err := automaton.Build(g, first)
		if err != nil {
			return err
		}

		table, err = lrtable.Build(g, coll, follow)
		if err != nil {
			return err
		}

		bundle = artifact.Build(g, table, follow)

		if cfg.Cache.Enabled {
			if err := storeCachedBundle(cachePath, bundle); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not write cache: %s\n", err.Error())
			}
		}
	}

	if err := os.MkdirAll(cfg.Build.OutDir, 0o755); err != nil {
		return err
	}

	dumpPath := filepath.Join(cfg.Build.OutDir, "artifact.json")
	dumpData, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(dumpPath, dumpData, 0o644); err != nil {
		return err
	}

	if table != nil {
		tablePath := filepath.Join(cfg.Build.OutDir, "tables.txt")
		if err := os.WriteFile(tablePath, []byte(table.String()), 0o644); err != nil {
			return err
		}
		fmt.Println(table.String())
	}

	fmt.Printf("wrote artifact dump to %s\n", dumpPath)
	return nil
}

func contentCacheKey(src []byte) uuid.UUID {
	sum := sha256.Sum256(src)
	return uuid.NewSHA1(uuid.Nil, sum[:])
}

func loadCachedBundle(path string) (artifact.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return artifact.Bundle{}, err
	}
	var bundle artifact.Bundle
	if _, err := rezi.DecBinary(data, &bundle); err != nil {
		return artifact.Bundle{}, err
	}
	return bundle, nil
}

func storeCachedBundle(path string, bundle artifact.Bundle) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := rezi.EncBinary(bundle)
	return os.WriteFile(path, data, 0o644)
}

func runInteractive() error {
	reader, err := shell.NewInteractiveReader("grouper> ")
	if err != nil {
		return err
	}
	defer reader.Close()

	var src []byte

	for {
		line, err := reader.ReadDecl()
		if err != nil {
			return nil
		}

		src = append(src, []byte(line+"\n")...)

		result, err := bnfread.Read(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			continue
		}

		first := analysis.ComputeFirst(result.Grammar)
		follow := analysis.ComputeFollow(result.Grammar, first)

		coll, err := automaton.Build(result.Grammar, first)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			continue
		}

		if _, err := lrtable.Build(result.Grammar, coll, follow); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			continue
		}

		fmt.Printf("ok: %d rules, %d states\n", result.Grammar.RuleCount(), coll.Count())
	}
}
