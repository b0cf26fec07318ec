package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tiktok-planner/domain/model"
	"tiktok-planner/usecase"
)

const helpText = `commands:
  search <keyword>              new search
  preset <n>                    search preset keyword n (see "presets")
  presets                       list preset keywords
  more                          load the next page
  results                       show current results
  add <n|id>                    queue a result
  queue                         show the queue by schedule
  remove <id>                   drop a queued video
  schedule <id> <when>          e.g. schedule 7301 2025-01-31T18:30
  caption <id> <text>           set the caption
  suggest <id>                  suggest a caption crediting the author
  notes <id> <text>             set notes
  toggle <id> <action>          like | comment | repost | follow
  details <id> <action> <text>  set the text for an action
  help                          this text
  quit
`

// REPL drives the search controller and queue store from line commands.
type REPL struct {
	controller usecase.ISearchController
	queue      usecase.IQueueStore
	presets    []string
	out        io.Writer
	now        func() time.Time
}

func NewREPL(controller usecase.ISearchController, queue usecase.IQueueStore, presets []string, out io.Writer) *REPL {
	return &REPL{controller: controller, queue: queue, presets: presets, out: out, now: time.Now}
}

// Run reads commands until EOF, "quit" or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	r.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !r.Exec(ctx, scanner.Text()) {
			return nil
		}
		r.prompt()
	}
	return scanner.Err()
}

func (r *REPL) prompt() {
	fmt.Fprint(r.out, "> ")
}

// Exec runs one command line. It returns false when the user quits.
func (r *REPL) Exec(ctx context.Context, line string) bool {
	cmd, rest := splitWord(strings.TrimSpace(line))
	switch cmd {
	case "":
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprint(r.out, helpText)
	case "search":
		if strings.TrimSpace(rest) == "" {
			fmt.Fprintln(r.out, "usage: search <keyword>")
			return true
		}
		r.report(r.controller.StartSearch(ctx, rest))
	case "presets":
		for i, kw := range r.presets {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, kw)
		}
	case "preset":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 || n > len(r.presets) {
			fmt.Fprintf(r.out, "choose a preset between 1 and %d\n", len(r.presets))
			return true
		}
		r.report(r.controller.Refresh(ctx, r.presets[n-1]))
	case "more":
		if !r.controller.Snapshot().HasMore {
			fmt.Fprintln(r.out, "no more results")
			return true
		}
		r.report(r.controller.LoadMore(ctx))
	case "results":
		r.printResults()
	case "add":
		r.add(ctx, strings.TrimSpace(rest))
	case "queue":
		r.printQueue()
	case "remove":
		r.done(r.queue.Remove(ctx, strings.TrimSpace(rest)), "removed")
	case "schedule", "caption", "notes":
		id, value := splitWord(rest)
		update := usecase.QueueItemUpdate{}
		switch cmd {
		case "schedule":
			update.ScheduledFor = &value
		case "caption":
			update.Caption = &value
		case "notes":
			update.Notes = &value
		}
		r.done(r.queue.UpdateFields(ctx, id, update), "updated")
	case "suggest":
		caption, ok := r.queue.SuggestCaption(ctx, strings.TrimSpace(rest))
		if r.done(ok, "caption suggested") {
			fmt.Fprintln(r.out, caption)
		}
	case "toggle":
		id, action := splitWord(rest)
		if !r.validAction(action) {
			return true
		}
		r.done(r.queue.ToggleInteraction(ctx, id, model.InteractionAction(action)), "toggled")
	case "details":
		id, tail := splitWord(rest)
		action, text := splitWord(tail)
		if !r.validAction(action) {
			return true
		}
		r.done(r.queue.SetInteractionDetails(ctx, id, model.InteractionAction(action), text), "updated")
	default:
		fmt.Fprintf(r.out, "unknown command %q, type help\n", cmd)
	}
	return true
}

func (r *REPL) report(err error) {
	state := r.controller.Snapshot()
	if state.Status == usecase.StatusError || err != nil {
		fmt.Fprintln(r.out, state.ErrorMessage)
		return
	}
	r.printResults()
}

func (r *REPL) printResults() {
	state := r.controller.Snapshot()
	if len(state.Videos) == 0 {
		fmt.Fprintln(r.out, "no results")
		return
	}
	now := r.now()
	fmt.Fprintf(r.out, "%q: %d videos\n", state.Keyword, len(state.Videos))
	for i, v := range state.Videos {
		fmt.Fprintln(r.out, formatVideo(i+1, v, now))
	}
	if state.HasMore {
		fmt.Fprintln(r.out, `type "more" for the next page`)
	}
}

func (r *REPL) add(ctx context.Context, ref string) {
	state := r.controller.Snapshot()
	video, ok := r.controller.Video(ref)
	if !ok {
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(state.Videos) {
			video, ok = state.Videos[n-1], true
		}
	}
	if !ok {
		fmt.Fprintf(r.out, "no result %q\n", ref)
		return
	}
	if !r.queue.Add(ctx, video) {
		fmt.Fprintf(r.out, "%s is already queued\n", video.ID)
		return
	}
	fmt.Fprintf(r.out, "queued %s (%d in queue)\n", video.ID, r.queue.Len())
}

func (r *REPL) printQueue() {
	items := r.queue.Sorted()
	if len(items) == 0 {
		fmt.Fprintln(r.out, "queue is empty")
		return
	}
	for _, item := range items {
		fmt.Fprint(r.out, formatQueueItem(item))
	}
}

func (r *REPL) validAction(action string) bool {
	if model.InteractionAction(action).Valid() {
		return true
	}
	fmt.Fprintf(r.out, "unknown action %q\n", action)
	return false
}

func (r *REPL) done(ok bool, msg string) bool {
	if ok {
		fmt.Fprintln(r.out, msg)
	} else {
		fmt.Fprintln(r.out, "not in queue")
	}
	return ok
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
