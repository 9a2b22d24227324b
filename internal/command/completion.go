// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/meta"
)

const bashCompletionScript = `# bash completion for jcheck
_jcheck()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare cmp run suite repl seal plugins completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local report="--color -c --columns -a --delta -d --delta-ignore --filter -f --output -o --sort -s --stats --titles -t"
    local src="--endpoint --passphrase -p --profile --region"

    case "$cmd" in
        compare|cmp)
            local opts="$report $src"
            ;;
        run)
            local opts="$report $src --cache --expect -e --input -i --timeout"
            ;;
        suite)
            local opts="$report $src --fail-fast --parallel -n --pick --timeout"
            ;;
        repl)
            local opts="$src --input -i"
            ;;
        seal)
            local opts="$src --iterations"
            ;;
        plugins)
            local opts="--all --output -o"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text table json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    if [[ "$cmd" == "suite" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    else
        COMPREPLY=( $(compgen -f -- "$cur") )
    fi
    return 0
}

complete -o filenames -F _jcheck jcheck
`

const zshCompletionScript = `#compdef jcheck

_jcheck() {
  local -a cmds
  cmds=(
    'compare:compare an expected document with an actual one'
    'cmp:compare an expected document with an actual one'
    'run:evaluate a script and print or check its result'
    'suite:run every case under a directory'
    'repl:explore a document interactively'
    'seal:encrypt a document with a passphrase'
    'plugins:list the functions available to scripts'
    'completion:generate shell completion script'
  )

  local -a report
  report=(
  '(-a --columns)'{-a,--columns}'[table columns]:columns'
  '(-c --color)'{-c,--color}'[enable colored output]'
  '(-d --delta)'{-d,--delta}'[print a structural delta]'
  '--delta-ignore[members left out of the delta]:members'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text table json yaml)'
  '(-s --sort)'{-s,--sort}'[sort keys]:keys'
  '--stats[append mismatch statistics]'
  '(-t --titles)'{-t,--titles}'[show column titles]'
  )

  local -a src
  src=(
  '--endpoint[S3-compatible endpoint]:url'
  '(-p --passphrase)'{-p,--passphrase}'[passphrase for sealed documents]:passphrase'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'jcheck commands' cmds
    return
  fi

  case $words[2] in
    compare|cmp)
      _arguments -C $report $src '1:expected:_files' '2:actual:_files'
      ;;
    run)
      _arguments -C $report $src \
        '--cache[reuse cached results]' \
        '(-e --expect)'{-e,--expect}'[expected document]:file:_files' \
        '(-i --input)'{-i,--input}'[input document]:file:_files' \
        '--timeout[evaluation timeout]:duration' \
        '1:script:_files -g "*.hcl"'
      ;;
    suite)
      _arguments -C $report $src \
        '--fail-fast[stop after the first failure]' \
        '(-n --parallel)'{-n,--parallel}'[cases run at once]:count' \
        '--pick[choose cases interactively]' \
        '--timeout[per case timeout]:duration' \
        '::dir:_directories'
      ;;
    repl)
      _arguments -C $src '(-i --input)'{-i,--input}'[input document]:file:_files'
      ;;
    seal)
      _arguments -C $src '--iterations[pbkdf2 iterations]:count' '1:document:_files'
      ;;
    plugins)
      _arguments -C '--all[include built-in functions]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text table json yaml)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _jcheck jcheck
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	} else {
		// Fall back to the login shell.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	if err := ShellValidator(shell); err != nil {
		return fmt.Errorf("usage: jcheck completion [bash|zsh]: %w", err)
	}

	script := bashCompletionScript
	if shell == "zsh" {
		script = zshCompletionScript
	}
	_, err := fmt.Fprint(writer(cmd), script)
	return err
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "jcheck completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
