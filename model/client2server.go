package model

const (
	CommandStart   = "start"
	CommandNext    = "next"
	CommandRestart = "restart"
	CommandMenu    = "menu"
	CommandMove    = "move"
	CommandUse     = "use"
	CommandSkin    = "skin"
	CommandReset   = "reset"
	CommandImport  = "import"
	CommandExport  = "export"
)

type ClientMessage struct {
	Type      string    `json:"type"`
	Level     int       `json:"level,omitempty"`
	Direction Direction `json:"direction"`
	Skin      string    `json:"skin,omitempty"`
	Code      string    `json:"code,omitempty"`
}
