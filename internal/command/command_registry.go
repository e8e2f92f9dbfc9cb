package command

var registry = map[string]Command{}

func Register(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

func All() []Command {
	var list []Command
	for _, cmd := range registry {
		list = append(list, cmd)
	}
	return list
}

// RegisterCommand applies middlewares and registers the wrapped command.
func RegisterCommand(cmd Command, mws ...Middleware) {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	Register(cmd)
}
