package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// Terminal обеспечивает интерактивный ввод учетных данных через терминал.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	stdinfd int
}

// NewTerminal создает новый экземпляр Terminal.
func NewTerminal() *Terminal {
	return &Terminal{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinfd: int(os.Stdin.Fd()),
	}
}

// Token запрашивает токен Slack без отображения ввода.
func (t *Terminal) Token(_ context.Context) (string, error) {
	fmt.Fprint(t.out, "Enter Slack token: ")
	byteToken, err := term.ReadPassword(t.stdinfd)
	if err != nil {
		return "", xerrors.Errorf("failed to read token: %w", err)
	}
	fmt.Fprintln(t.out) // Новая строка после ввода

	token := strings.TrimSpace(string(byteToken))
	if token == "" {
		return "", xerrors.New("token must not be empty")
	}
	return token, nil
}

// ChannelID запрашивает идентификатор канала.
func (t *Terminal) ChannelID(_ context.Context) (string, error) {
	fmt.Fprint(t.out, "Enter channel ID: ")
	channelID, err := t.in.ReadString('\n')
	if err != nil {
		return "", xerrors.Errorf("failed to read channel id: %w", err)
	}
	return strings.TrimSpace(channelID), nil
}
