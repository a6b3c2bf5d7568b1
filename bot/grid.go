package bot

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ArnaudCalmettes/greygrid/batch"
	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/grid"
	"github.com/ArnaudCalmettes/greygrid/imp"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// download fetches an attachment. Anything but 200 OK is an error.
func download(url string) (io.ReadCloser, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Options for a grid command: the configured ones, with thresholds replaced
// by the command arguments if there are any.
func gridOptions(args []string) (grid.Options, error) {
	opts, err := conf.GridOptions(viper.GetViper())
	if err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.Thresholds, err = conf.ParseThresholds(args)
	}
	return opts, err
}

// renderImage runs the grid pipeline on an encoded image and returns both
// grids as PNG files ready to be attached to a message.
func renderImage(r io.Reader, name string, opts grid.Options, normalize bool) ([]*discordgo.File, *grid.Result, error) {
	img, err := imp.Read(r)
	if err != nil {
		return nil, nil, err
	}
	gray := imp.ToGray(img)
	if normalize {
		dst := image.NewGray(gray.Bounds())
		if err := imp.Normalize(gray, dst); err != nil {
			return nil, nil, err
		}
		gray = dst
	}

	res, err := grid.Process(gray, opts)
	if err != nil {
		return nil, nil, err
	}

	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) + ".png"
	files := make([]*discordgo.File, 0, 2)
	for _, out := range []struct {
		role string
		img  image.Image
	}{
		{batch.RoleResult, res.Rendered},
		{batch.RoleBase, res.Labeled},
	} {
		var b bytes.Buffer
		if err := imp.Encode(&b, out.img, "png"); err != nil {
			return nil, nil, err
		}
		files = append(files, &discordgo.File{
			Name:        batch.OutputName(name, opts.Colors(), out.role),
			ContentType: "image/png",
			Reader:      &b,
		})
	}
	return files, res, nil
}

// Turn every attached image into a grid and send both images back.
func gridCommand(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendWarning(ctx, "syntax: `", ctx.Args[0], " [thresholds...]` with at least one image attached")
		return
	}

	opts, err := gridOptions(ctx.Args[1:])
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}

	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}

	done := 0
	for _, att := range ctx.Msg.Attachments {
		log.Println("Downloading attachment", att.URL)
		body, err := download(att.URL)
		if err != nil {
			sendWarning(ctx, fmt.Sprintf("Couldn't download <%s>: `%s`\n", att.URL, err))
			continue
		}
		files, res, err := renderImage(body, att.Filename, opts, viper.GetBool(conf.Normalize))
		body.Close()
		if err != nil {
			sendWarning(ctx, fmt.Sprintf("While processing <%s>: `%s`\n", att.Filename, err))
			continue
		}

		msg, err := ctx.Ses.ChannelMessageSendComplex(ctx.Msg.ChannelID, &discordgo.MessageSend{
			Content: fmt.Sprintf("**%s**: %dx%d blocks, %d colors", att.Filename, res.Levels.Cols, res.Levels.Rows, opts.Colors()),
			Files:   files,
		})
		if err != nil {
			internalError(ctx, err)
			continue
		}
		done++

		job := &models.Job{
			GuildID:    ctx.Msg.GuildID,
			Source:     att.Filename,
			Thresholds: models.FormatThresholds(opts.Thresholds),
			BlockSize:  opts.BlockSize,
			Rows:       res.Levels.Rows,
			Cols:       res.Levels.Cols,
		}
		if len(msg.Attachments) == 2 {
			job.ResultPath, job.BasePath = msg.Attachments[0].URL, msg.Attachments[1].URL
		}
		if err := models.RecordJob(db, job); err != nil {
			log.Println("couldn't record job:", err)
		}
	}

	if done == 0 {
		markPoop(ctx)
		return
	}
	markOk(ctx)
}
