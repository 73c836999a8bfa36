package scroll

// Keys lists the key names bound to each navigation action. Names follow
// bubbletea's KeyMsg.String spelling; the tcell front end translates its
// events into the same names.
var Keys = map[Action][]string{
	LineUp:       {"k", "up"},
	LineDown:     {"j", "down"},
	HalfPageUp:   {"ctrl+u"},
	HalfPageDown: {"ctrl+d"},
	PageUp:       {"pgup", "b"},
	PageDown:     {"pgdown", " ", "f"},
	Home:         {"g", "home"},
	End:          {"G", "end"},
}

var byKey = func() map[string]Action {
	m := make(map[string]Action)
	for a, names := range Keys {
		for _, name := range names {
			m[name] = a
		}
	}
	return m
}()

// ActionForKey returns the action bound to the key name, or None.
func ActionForKey(name string) Action {
	return byKey[name]
}
