package component

// Hooks names the script that handles an entity's locomotion events.
type Hooks struct {
	ScriptPath string
}

var HooksComponent = NewComponent[Hooks]()
