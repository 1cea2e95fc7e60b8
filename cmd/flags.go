package cmd

import (
	"strings"

	"github.com/etnz/cardfolio"
)

// bucketList is a flag.Value accepting bucket names, comma separated or repeated.
type bucketList []cardfolio.Bucket

func (l *bucketList) String() string {
	if l == nil {
		return ""
	}
	names := make([]string, len(*l))
	for i, b := range *l {
		names[i] = b.String()
	}
	return strings.Join(names, ",")
}

func (l *bucketList) Set(value string) error {
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		b, err := cardfolio.ParseBucket(name)
		if err != nil {
			return err
		}
		*l = append(*l, b)
	}
	return nil
}

// bucketNames lists the bucket names accepted by bucketList.
func bucketNames() []string {
	var names []string
	for _, b := range cardfolio.Buckets() {
		names = append(names, b.String())
	}
	return names
}
