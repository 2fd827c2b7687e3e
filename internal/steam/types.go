package steam

// Game is one installed title found in a library manifest.
type Game struct {
	AppID string
	Name  string
}
