package cli

import (
	"context"
	"fmt"
)

const leaveChat = "/exit"

// Chat runs an assistant conversation until the user types /exit.
func (a *App) Chat(ctx context.Context, args []string) error {
	first := a.chatService.Start(ctx, a.profile)
	a.printf("AI: %s\n", first.Text)
	if !a.chatService.Available() {
		return nil
	}

	for {
		text, err := a.ask("You (" + leaveChat + " to leave)")
		if err != nil {
			return err
		}
		if text == leaveChat {
			return nil
		}
		if text == "" {
			continue
		}

		a.printf("AI: ")
		reply, err := a.chatService.Send(ctx, text, func(chunk string) {
			fmt.Fprint(a.out, chunk)
		})
		a.println()
		if err != nil {
			a.printf("AI: %s\n", reply.Text)
			reportError(err)
		}
	}
}
