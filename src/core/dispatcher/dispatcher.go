// Package dispatcher turns inbound chat events into file operations.
package dispatcher

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/go-logr/logr"

	"filebot/src/core/chat"
	"filebot/src/core/permission"
	"filebot/src/log"
)

// Command keywords
const (
	KeywordSend       = "发送"
	KeywordDelete     = "删除"
	KeywordDeleteDir  = "删除目录"
	KeywordList       = "查看"
	KeywordMove       = "移动"
	KeywordCopy       = "复制"
	KeywordHelp       = "文件帮助"
	DefaultWakePrefix = "/"
)

const msgPermissionDenied = "权限不足，该指令仅限管理员使用。"

// FileOperations is the facade the dispatcher forwards to
type FileOperations interface {
	Send(ctx context.Context, path string) iter.Seq[chat.Reply]
	DeleteFile(ctx context.Context, path string) iter.Seq[chat.Reply]
	DeleteDirectory(ctx context.Context, path string) iter.Seq[chat.Reply]
	List(ctx context.Context, path string) iter.Seq[chat.Reply]
	Move(ctx context.Context, src, dst string) iter.Seq[chat.Reply]
	Copy(ctx context.Context, src, dst string) iter.Seq[chat.Reply]
}

type command struct {
	level permission.Level
	args  int
	usage string
	run   func(ctx context.Context, args []string) iter.Seq[chat.Reply]
}

type Dispatcher struct {
	commands   map[string]command
	perms      permission.Checker
	wakePrefix string
	logger     logr.Logger
}

func New(ops FileOperations, perms permission.Checker, wakePrefix string) *Dispatcher {
	d := &Dispatcher{
		perms:      perms,
		wakePrefix: wakePrefix,
		logger:     log.WithName("dispatcher"),
	}

	one := func(op func(context.Context, string) iter.Seq[chat.Reply]) func(context.Context, []string) iter.Seq[chat.Reply] {
		return func(ctx context.Context, args []string) iter.Seq[chat.Reply] {
			return op(ctx, args[0])
		}
	}
	two := func(op func(context.Context, string, string) iter.Seq[chat.Reply]) func(context.Context, []string) iter.Seq[chat.Reply] {
		return func(ctx context.Context, args []string) iter.Seq[chat.Reply] {
			return op(ctx, args[0], args[1])
		}
	}

	d.commands = map[string]command{
		KeywordSend: {
			level: permission.LevelAdmin,
			args:  1,
			usage: "请输入正确的文件路径，格式为 " + KeywordSend + " 路径",
			run:   one(ops.Send),
		},
		KeywordDelete: {
			level: permission.LevelAdmin,
			args:  1,
			usage: "请输入正确的文件路径，格式为 " + KeywordDelete + " 路径",
			run:   one(ops.DeleteFile),
		},
		KeywordDeleteDir: {
			level: permission.LevelAdmin,
			args:  1,
			usage: "请输入正确的目录路径，格式为 " + KeywordDeleteDir + " 路径",
			run:   one(ops.DeleteDirectory),
		},
		KeywordList: {
			level: permission.LevelAdmin,
			args:  1,
			usage: "请输入正确的目录路径，格式为 " + KeywordList + " 路径",
			run:   one(ops.List),
		},
		KeywordMove: {
			level: permission.LevelAdmin,
			args:  2,
			usage: "请输入正确的路径，格式为 " + KeywordMove + " 源路径 目标路径",
			run:   two(ops.Move),
		},
		KeywordCopy: {
			level: permission.LevelAdmin,
			args:  2,
			usage: "请输入正确的路径，格式为 " + KeywordCopy + " 源路径 目标路径",
			run:   two(ops.Copy),
		},
		KeywordHelp: {
			level: permission.LevelEveryone,
			run:   d.help,
		},
	}
	return d
}

// Dispatch parses ev and returns the replies for the command it carries.
// handled is false when ev is not one of our commands; the host should then
// pass it on to other plugins.
func (d *Dispatcher) Dispatch(ctx context.Context, ev chat.Event) (replies iter.Seq[chat.Reply], handled bool) {
	text, ok := ev.Text()
	if !ok {
		return nil, false
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	keyword := fields[0]
	if d.wakePrefix != "" {
		keyword = strings.TrimPrefix(keyword, d.wakePrefix)
	}
	cmd, ok := d.commands[keyword]
	if !ok {
		return nil, false
	}

	logger := d.logger.WithValues("command", keyword, "sender", ev.Sender.ID, "event", ev.ID)

	if !d.perms.Allowed(ctx, ev.Sender, cmd.level) {
		logger.Info("Permission denied", "required", cmd.level.String())
		return single(chat.Plain(msgPermissionDenied)), true
	}

	args := fields[1:]
	if len(args) < cmd.args {
		logger.V(1).Info("Missing arguments", "got", len(args), "want", cmd.args)
		return single(chat.Plain(cmd.usage)), true
	}

	logger.Info("Dispatching command", "args", args[:cmd.args])
	return cmd.run(ctx, args[:cmd.args]), true
}

// HelpText is the static usage summary shown by the help command.
func (d *Dispatcher) HelpText() string {
	p := d.wakePrefix
	lines := []string{
		"指令说明：",
		fmt.Sprintf("%s%s 路径 - 发送指定路径的文件", p, KeywordSend),
		fmt.Sprintf("%s%s 路径 - 删除指定路径的文件", p, KeywordDelete),
		fmt.Sprintf("%s%s 路径 - 删除指定路径的目录及其全部内容", p, KeywordDeleteDir),
		fmt.Sprintf("%s%s 路径 - 查看指定目录的文件和子目录", p, KeywordList),
		fmt.Sprintf("%s%s 源路径 目标路径 - 移动指定路径的文件或目录", p, KeywordMove),
		fmt.Sprintf("%s%s 源路径 目标路径 - 复制指定路径的文件或目录", p, KeywordCopy),
		fmt.Sprintf("%s%s - 显示本帮助信息", p, KeywordHelp),
		"所有路径均相对于文件根目录。除帮助外，其余指令仅限管理员使用。",
	}
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) help(context.Context, []string) iter.Seq[chat.Reply] {
	return single(chat.Plain(d.HelpText()))
}

func single(r chat.Reply) iter.Seq[chat.Reply] {
	return func(yield func(chat.Reply) bool) {
		yield(r)
	}
}
