package bot

import (
	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/spf13/viper"
)

// List the last grids made in the guild
func historyCommand(ctx *exrouter.Context) {
	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}

	jobs, err := models.ListJobs(db, ctx.Msg.GuildID, viper.GetInt(conf.HistoryLimit))
	if err != nil {
		internalError(ctx, err)
		return
	}
	if len(jobs) == 0 {
		sendWarning(ctx, "No grid was made in this server yet. Use `grid` with an image attached.")
		return
	}

	ctx.Reply("```" + models.FormatJobs(jobs) + "```")
}
