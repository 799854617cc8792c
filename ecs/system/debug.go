package system

// Debug turns on lifecycle logging and the collision overlay.
var Debug bool
