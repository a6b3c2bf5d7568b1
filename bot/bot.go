package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
)

// NewRouter builds the command router of the bot.
func NewRouter(db *gorm.DB) *exrouter.Route {
	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		r.Use(dbMiddleware(db))
		r.On("grid", gridCommand).Desc("turn attached images into numbered grids: grid [thresholds...] (alias: g)").Alias("g")
		r.On("history", historyCommand).Desc("list the last grids made in this server (alias: hi)").Alias("hi")
	})

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var b strings.Builder
		for _, v := range router.Routes {
			b.WriteString(v.Name + ": " + v.Description + "\n")
		}
		ctx.Reply("```" + b.String() + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	return router
}

// Run runs the bot.
func Run() {
	dg, err := discordgo.New("Bot " + viper.GetString(conf.BotToken))
	if err != nil {
		fmt.Println("couldn't create Discord session:", err)
		return
	}

	db, err := gorm.Open("sqlite3", viper.GetString(conf.DB))
	if err != nil {
		fmt.Println("couldn't connect to db:", err)
		return
	}
	defer db.Close()
	if err := models.Migrate(db); err != nil {
		fmt.Println("couldn't migrate db:", err)
		return
	}

	router := NewRouter(db)
	prefix := viper.GetString(conf.BotPrefix)

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		router.FindAndExecute(s, prefix, s.State.User.ID, m.Message)
	})

	err = dg.Open()
	if err != nil {
		fmt.Println("error opening connection:", err)
		return
	}

	fmt.Println("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	dg.Close()
}
