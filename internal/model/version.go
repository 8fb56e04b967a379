package model

// Version is the released version of envfetch.
const Version = "2.1.0"
