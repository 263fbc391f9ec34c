package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/evaluator"
	"github.com/npillmayer/modcalc/modcalc/ui/termui"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

const version = "0.1"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modcalc [script ...]",
	Short: "An integer calculator with modules of expression templates",
	Long: `Welcome to modcalc V` + version + `

modcalc evaluates integer expressions with the operators + - * / % and
brackets. Expressions may call templates, which are stored as variables
within named modules.

modcalc is able to run in interactive mode or execute one or more scripts in
batch-mode. A script contains one command per line. Use '-' as a script name
to read commands from stdin.
`,
	Args: cobra.ArbitraryArgs,
	Run:  runModcalcCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by modcalc.main().
func Execute() {
	if rootCmd.Execute() != nil {
		modcalc.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "Force run in interactive mode")
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
	rootCmd.PersistentFlags().String("history", "", "Append an audit trail of commands to this file")
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().Int("maxdepth", evaluator.DefaultMaxDepth, "Maximum nesting depth of template calls")
}

func runModcalcCmd(cmd *cobra.Command, args []string) {
	tracing.Infof("modcalc interpreter called")
	intp := newInterpreter()
	interactive := modcalc.Configuration.Bool("interactive")
	if len(args) == 0 && !interactive && !readline.IsTerminal(int(os.Stdin.Fd())) {
		args = []string{"-"}
	}
	failed := 0
	for _, script := range args {
		n, err := runScript(intp, script)
		failed += n
		if err != nil {
			fmt.Fprintf(os.Stderr, "modcalc: %v\n", err)
			modcalc.Exit(1)
		}
	}
	if len(args) == 0 || interactive {
		runREPL(intp) // will not return
	}
	if failed > 0 {
		modcalc.Exit(1)
	}
	modcalc.Exit(0)
}

// newInterpreter creates an interpreter from the global configuration. If a
// history file is configured, it is opened for appending.
func newInterpreter() *evaluator.Interpreter {
	ev := evaluator.NewEvaluator(nil)
	ev.SetMaxDepth(modcalc.Configuration.Int("expansion.maxdepth"))
	intp := evaluator.NewInterpreter(ev)
	if name := modcalc.Configuration.String("history"); name != "" {
		f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			tracer().Errorf("cannot open history file: %v", err)
			fmt.Fprintf(os.Stderr, "modcalc: cannot open history file: %v\n", err)
		} else {
			modcalc.Historyfile = f
			intp.SetHistory(f)
		}
	}
	return intp
}

// runScript executes the lines of a script file, or of stdin for name "-".
func runScript(intp *evaluator.Interpreter, name string) (int, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}
	return RunBatch(modcalc.SignalContext, intp, r, name, os.Stdout, os.Stderr)
}

// --- REPL ------------------------------------------------------------------

func runREPL(intp *evaluator.Interpreter) {
	repl := &modcalcREPL{intp: intp}
	repl.BaseREPL = termui.NewBaseREPL("modcalc", version, evaluator.Commands())
	repl.Interpreter = repl
	repl.Helper = printCommandHelp
	repl.SetContext(intp.ActiveModule())
	repl.Prompt(true)
}

type modcalcREPL struct {
	*termui.BaseREPL
	intp *evaluator.Interpreter
}

func (repl *modcalcREPL) InterpretCommand(command string) {
	tracer().Debugf("modcalc interpreter: %q", command)
	command = strings.Trim(command, "\x00")
	out, err := repl.intp.Execute(command)
	stdout, stderr := repl.Outputs()
	if err != nil {
		termui.DefaultFormatter{}.Format(err, stderr)
		return
	}
	if out != "" {
		termui.DefaultFormatter{}.Format(out, stdout)
	}
	repl.SetContext(repl.intp.ActiveModule())
}

// printCommandHelp lists the interpreter's commands as a table.
func printCommandHelp(w io.Writer) {
	tw := table.NewWriter()
	tw.SetTitle("modcalc will interpret the following statements")
	tw.AppendHeader(table.Row{"command", "arguments", "effect"})
	tw.AppendRows([]table.Row{
		{"calc", "<expr>", "print the value of an expression"},
		{"modulesadd", "<name>", "create an empty module and make it active"},
		{"modulesvaradd", "<module> <var> <expr>", "store a template as variable of a module"},
		{"modulesshow", "", "list all modules and their variables"},
		{"modulesuse", "<name>", "make an existing module the active one"},
	})
	tw.SetStyle(table.StyleLight)
	io.WriteString(w, "\n"+tw.Render()+"\n\n")
	io.WriteString(w, "Templates use placeholders like a(0) for the arguments of a call.\n")
	io.WriteString(w, "Calls without a module name refer to the active module.\n\n")
}
