// Command cli is a thin client for the stockroom API, for poking at a
// running server from the shell.
//
// Usage:
//
//	cli [-addr http://localhost:8080] list
//	cli create <name> <barcode> [quantity]
//	cli get|delete <id>
//	cli restock|deduct <id> <delta>
//	cli lookup <barcode>
//	cli search <name> [limit]
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the stockroom API")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fail("command required: list, create, get, delete, restock, deduct, lookup, search")
	}

	c := &client{base: *addr + "/api"}

	var err error
	switch cmd := args[0]; cmd {
	case "list":
		err = c.do(http.MethodGet, "/items", nil)
	case "create":
		if len(args) < 3 {
			fail("usage: create <name> <barcode> [quantity]")
		}
		body := map[string]interface{}{"product_name": args[1], "barcode": args[2]}
		if len(args) > 3 {
			body["product_quantity"] = args[3]
		}
		err = c.do(http.MethodPost, "/items", body)
	case "get":
		err = c.do(http.MethodGet, "/items/"+arg(args, 1, "id"), nil)
	case "delete":
		err = c.do(http.MethodDelete, "/items/"+arg(args, 1, "id"), nil)
	case "restock", "deduct":
		if len(args) < 3 {
			fail("usage: " + cmd + " <id> <delta>")
		}
		err = c.do(http.MethodPost, "/items/"+args[1]+"/"+cmd, map[string]interface{}{"delta": args[2]})
	case "lookup":
		err = c.do(http.MethodGet, "/lookup/"+arg(args, 1, "barcode"), nil)
	case "search":
		q := url.Values{"name": {arg(args, 1, "name")}}
		if len(args) > 2 {
			q.Set("limit", args[2])
		}
		err = c.do(http.MethodGet, "/search?"+q.Encode(), nil)
	default:
		fail("unknown command: " + cmd)
	}

	if err != nil {
		fail(err.Error())
	}
}

func arg(args []string, i int, name string) string {
	if len(args) <= i {
		fail(name + " required")
	}
	return args[i]
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

type client struct {
	base string
}

// do sends one request and pretty-prints the JSON response.
func (c *client) do(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Write(data)
	}
	fmt.Printf("%s\n%s\n", resp.Status, pretty.String())

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
	return nil
}
