package swap

const Version = "v0.1.0"
