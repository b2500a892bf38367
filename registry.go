package watch

// Handler runs a command with the given argument string. Anything the command
// wants to report, it writes for itself; the watcher ignores the outcome.
type Handler func(args string)

// Registry resolves command names to handlers.
type Registry interface {
	Lookup(name string) (Handler, bool)
}

// Entry is one named command in a Table.
type Entry struct {
	Name    string
	Help    string
	Handler Handler
}

// Table is an ordered list of commands. Lookup scans it from the start and
// stops at the end of the slice or at the first entry with an empty name,
// whichever comes first. If several entries share a name, the first one wins.
type Table []Entry

// Lookup returns the handler for the first entry called name.
func (t Table) Lookup(name string) (Handler, bool) {
	for _, e := range t {
		if e.Name == "" {
			break
		}
		if e.Name == name {
			return e.Handler, e.Handler != nil
		}
	}
	return nil, false
}

// Names returns the names of the commands in the table, in order, up to the
// first unnamed entry.
func (t Table) Names() []string {
	var names []string
	for _, e := range t {
		if e.Name == "" {
			break
		}
		names = append(names, e.Name)
	}
	return names
}
