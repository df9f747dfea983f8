package main

import (
	"fmt"

	"github.com/lintelhq/lintel/project"
	"github.com/spf13/cobra"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Post and read the site log",
}

// message post
var messagePostCmd = &cobra.Command{
	Use:   "post <body>",
	Short: "Append a message to a project's site log",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagePost,
}

var (
	messagePostProject string
	messagePostAuthor  string
)

// message list
var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List site log messages in posting order",
	Args:  cobra.NoArgs,
	RunE:  runMessageList,
}

var (
	messageListProject string
	messageListLimit   int
	messageListJSON    bool
)

func init() {
	rootCmd.AddCommand(messageCmd)
	messageCmd.AddCommand(messagePostCmd, messageListCmd)

	// message post flags
	messagePostCmd.Flags().StringVarP(&messagePostProject, "project", "p", "", "Owning project ID")
	messagePostCmd.Flags().StringVar(&messagePostAuthor, "author", "", "Message author")

	// message list flags
	messageListCmd.Flags().StringVarP(&messageListProject, "project", "p", "", "Filter by project ID")
	messageListCmd.Flags().IntVar(&messageListLimit, "limit", 0, "Keep only the most recent N messages")
	messageListCmd.Flags().BoolVar(&messageListJSON, "json", false, "Output as JSON")

	addProjectFlagAliases(messagePostCmd, messageListCmd)
}

func runMessagePost(cmd *cobra.Command, args []string) error {
	store, path, err := openPlanStore()
	if err != nil {
		return err
	}
	posted, err := store.PostMessage(args[0], project.PostMessageOptions{
		ProjectID: messagePostProject,
		Author:    messagePostAuthor,
	})
	if err != nil {
		return err
	}
	if err := project.WritePlan(path, store); err != nil {
		return err
	}

	fmt.Printf("Posted message %s by %s\n", posted.ID, posted.Author)
	return nil
}

func runMessageList(cmd *cobra.Command, args []string) error {
	store, _, err := openPlanStore()
	if err != nil {
		return err
	}

	messages, err := store.ListMessages(project.MessageFilter{
		ProjectID: messageListProject,
		Limit:     messageListLimit,
	})
	if err != nil {
		return err
	}

	if messageListJSON {
		return encodeJSONToStdout(messages)
	}
	if len(messages) == 0 {
		fmt.Println("No messages found.")
		return nil
	}

	for _, item := range messages {
		fmt.Printf("%s  [%s] %s: %s\n", item.CreatedAt.Format("2006-01-02 15:04"), item.ProjectID, item.Author, item.Body)
	}
	return nil
}
