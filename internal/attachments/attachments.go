// Package attachments indexes the uploaded files referenced by a
// WordPress export and mirrors them into the output tree, so content
// links can be rewritten to local static paths.
package attachments

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Orphan is the index key grouping attachments whose parent post no
// longer exists in the export.
const Orphan = ""

// Index maps a parent post filename (or Orphan) to the set of remote
// attachment URLs belonging to it.
type Index map[string]map[string]struct{}

func (idx Index) add(parent, url string) {
	if idx[parent] == nil {
		idx[parent] = make(map[string]struct{})
	}
	idx[parent][url] = struct{}{}
}

// URLs returns the attachment URLs recorded for the given parent.
func (idx Index) URLs(parent string) []string {
	urls := make([]string, 0, len(idx[parent]))
	for u := range idx[parent] {
		urls = append(urls, u)
	}
	return urls
}

type attachmentItem struct {
	PostID   int    `xml:"post_id"`
	PostName string `xml:"post_name"`
	PostType string `xml:"post_type"`
	ParentID int    `xml:"post_parent"`
	URL      string `xml:"attachment_url"`
}

type attachmentChannel struct {
	Items []attachmentItem `xml:"item"`
}

type attachmentFeed struct {
	Channel attachmentChannel `xml:"channel"`
}

// BuildIndex scans a WordPress export and groups attachment URLs under
// the filename of their parent post. Attachments whose parent id maps
// to no item in the export are grouped under Orphan.
func BuildIndex(src string) (Index, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	var feed attachmentFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	// Attachments are not posts, so they never name a parent. A post
	// with a blank post_name is keyed by its post_id, matching the
	// filename the post itself is written under.
	names := make(map[int]string)
	for _, item := range feed.Channel.Items {
		if item.PostType == "attachment" {
			continue
		}
		name := item.PostName
		if strings.TrimSpace(name) == "" {
			name = strconv.Itoa(item.PostID)
		}
		names[item.PostID] = name
	}

	idx := make(Index)
	for _, item := range feed.Channel.Items {
		if item.PostType != "attachment" || item.URL == "" {
			continue
		}
		parent, ok := names[item.ParentID]
		if !ok {
			parent = Orphan
		}
		idx.add(parent, item.URL)
	}
	return idx, nil
}
