package component

// RespawnRequest asks the respawn system to teleport a character back to its
// spawn point. It is removed once handled.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
