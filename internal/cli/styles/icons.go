package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "" // check
	IconX        = "" // x
	IconWarning  = "" // warning
	IconInfo     = "" // info
	IconConfig   = "" // config
	IconDatabase = "" // database
	IconDesktop  = "" // desktop
	IconTrash    = "" // trash
	IconCursor   = "" // chevron-right
	IconPlay     = "" // play
	IconAnchor   = "" // anchor
	IconArrow    = "" // arrow right

	// About
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGo        = "" // go gopher
	IconGithub    = "" // github
	IconHeart     = "" // heart
)
