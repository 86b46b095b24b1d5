package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/errors"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

// printer writes reports in one output mode.
type printer struct {
	w    io.Writer
	json bool
	enc  *json.Encoder
}

// newPrinter resolves mode against w: auto prints text to a terminal and
// JSON lines to anything else.
func newPrinter(w io.Writer, mode string) *printer {
	asJSON := mode == config.OutputJSON
	if mode == config.OutputAuto || mode == "" {
		asJSON = !isTerminal(w)
	}
	return &printer{w: w, json: asJSON, enc: json.NewEncoder(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report prints one report.
func (p *printer) report(rep *runner.Report) {
	if p.json {
		_ = p.enc.Encode(rep)
		return
	}

	if rep.Safe() {
		printSuccess(p.w, "%s %s", StyleValue.Render(rep.Source), StyleDim.Render("safe"))
		printStats(p.w,
			rep.Policy,
			fmt.Sprintf("%d nodes", rep.Stats.Nodes),
			fmt.Sprintf("%d refs", rep.Stats.References),
			fmt.Sprintf("depth %d", rep.Stats.Depth),
			rep.Duration.Round(time.Microsecond).String(),
		)
		return
	}
	printError(p.w, "%s %s", StyleValue.Render(rep.Source), StyleWarning.Render(rep.Result.Failure.String()))
	printDetail(p.w, "%s", rep.Result.Message)
	if rep.Result.Path != "" {
		fmt.Fprintln(p.w, "  "+stylePath.Render(rep.Result.Path))
	}
}

type errorLine struct {
	Error struct {
		Code    errors.Code `json:"code,omitempty"`
		Message string      `json:"message"`
	} `json:"error"`
}

// failure prints an error that kept a document from being checked.
func (p *printer) failure(err error) {
	if p.json {
		var line errorLine
		line.Error.Code = errors.GetCode(err)
		line.Error.Message = errors.UserMessage(err)
		_ = p.enc.Encode(line)
		return
	}
	printWarning(p.w, "%s", errors.UserMessage(err))
}

// summary prints totals after a batch in text mode.
func (p *printer) summary(checked, unsafe, failed int) {
	if p.json {
		return
	}
	switch {
	case unsafe == 0 && failed == 0:
		printInfo(p.w, "%d documents checked, all safe", checked)
	default:
		printInfo(p.w, "%d documents checked, %d unsafe, %d not checked", checked, unsafe, failed)
	}
}
