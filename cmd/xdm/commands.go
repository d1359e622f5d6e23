package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyuaNerin/xclient/twitter"
)

func newInboxCommand(a *app) *cobra.Command {
	var (
		cursor string
		pages  int
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Print the direct message conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			var snapshots []*twitter.InboxSnapshot
			for i := 0; i < pages; i++ {
				snapshot, err := client.GetDirectMessageConversations(cmd.Context(), a.account.ScreenName, cursor)
				if err != nil {
					return err
				}
				snapshots = append(snapshots, snapshot)

				if snapshot.Cursor == nil || *snapshot.Cursor == "" || *snapshot.Cursor == cursor {
					break
				}
				cursor = *snapshot.Cursor
			}

			return writeJSON(cmd.OutOrStdout(), snapshots)
		},
	}

	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor of the first page")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to follow")

	return cmd
}

func newSendCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <conversation_id> <text>",
		Short: "Send a direct message to a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			_, err = client.SendDirectMessage(cmd.Context(), args[0], args[1])
			return err
		},
	}
}

func newReplyCommand(a *app) *cobra.Command {
	var (
		text   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "reply",
		Short: "Reply to every conversation whose last message is not ours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			snapshot, err := client.GetDirectMessageConversations(cmd.Context(), a.account.ScreenName, "")
			if err != nil {
				return err
			}

			for _, conv := range snapshot.Conversations {
				if !conv.AwaitingReply(snapshot.UserID) {
					continue
				}

				last, _ := conv.LastMessage()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", conv.ConversationID, last.Text)

				if dryRun {
					continue
				}
				if _, err := client.SendDirectMessage(cmd.Context(), conv.ConversationID, text); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "reply text")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list the conversations")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newHomeCommand(a *app) *cobra.Command {
	var (
		count int
		seen  []string
	)

	cmd := &cobra.Command{
		Use:   "home",
		Short: "Print the home timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			tweets, err := client.FetchHomeTimeline(cmd.Context(), count, seen)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), tweets)
		},
	}

	cmd.Flags().IntVar(&count, "count", 20, "number of tweets to request")
	cmd.Flags().StringSliceVar(&seen, "seen", nil, "ids of tweets already seen")

	return cmd
}
