package cmds

// GlobalExecutor holds the flags packages register at init.
var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Alias(name string, aliases ...string) {
	GlobalExecutor.Alias(name, aliases...)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}

func MustExecute(args []string) {
	GlobalExecutor.MustExecute(args)
}

func PrintUsage() {
	GlobalExecutor.PrintUsage()
}
