// Command dicekv-cli is a minimal interactive console for a DiceKV server.
// Each input line is fired as a command and the decoded reply is printed.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	dicekv "github.com/dicekv/dicekv-go"
)

func main() {
	host := flag.String("host", "localhost", "server host")
	port := flag.Int("port", dicekv.DefaultPort, "server port")
	flag.Parse()

	client, err := dicekv.New(*host, *port)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer client.Close()

	prompt := fmt.Sprintf("%s:%d> ", *host, *port)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "exit" || line == "quit":
			return
		default:
			reply, err := client.FireString(line)
			if err != nil {
				fmt.Println("(error)", err)
				if errors.Is(err, dicekv.ErrClosed) {
					return
				}
			} else {
				fmt.Println(reply.String())
			}
		}
		fmt.Print(prompt)
	}
}
