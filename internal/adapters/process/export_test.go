package process

// ExitStatus exposes the mapping from a cmd.Wait error to an exit status.
var ExitStatus = exitStatus
