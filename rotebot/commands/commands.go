package commands

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Register,
	Profile,
	Find,
	Collection,
	Spin,
	Inject,
	Help,
}
