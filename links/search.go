package links

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"github.com/sahilm/fuzzy"
)

type Result struct {
	Link  Link
	Score int
}

// Search ranks links against query. A link scores the best match over
// all of its aliases, each tried as written, lower-cased and, when it
// contains Han characters, romanised to toneless pinyin. Links that
// match nothing are dropped; ties keep file order. An empty query returns
// every link with score 0.
func Search(all []Link, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Result, len(all))
		for i, l := range all {
			out[i] = Result{Link: l}
		}
		return out
	}

	var (
		candidates []string
		owner      []int
	)
	for i, l := range all {
		for _, name := range l.Names {
			candidates = append(candidates, name)
			owner = append(owner, i)
			if lower := strings.ToLower(name); lower != name {
				candidates = append(candidates, lower)
				owner = append(owner, i)
			}
			if py, ok := romanise(name); ok {
				candidates = append(candidates, py)
				owner = append(owner, i)
			}
		}
	}

	best := make(map[int]int)
	for _, m := range fuzzy.Find(query, candidates) {
		i := owner[m.Index]
		if s, ok := best[i]; !ok || m.Score > s {
			best[i] = m.Score
		}
	}

	out := make([]Result, 0, len(best))
	for i, l := range all {
		if s, ok := best[i]; ok {
			out = append(out, Result{Link: l, Score: s})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Fallback = func(r rune, _ pinyin.Args) []string { return []string{string(r)} }
	return a
}()

// romanise spells the Han characters of name in pinyin, keeping every
// other rune as is: "网易云" becomes "wangyiyun".
func romanise(name string) (string, bool) {
	if !strings.ContainsFunc(name, func(r rune) bool { return unicode.Is(unicode.Han, r) }) {
		return "", false
	}
	return strings.ToLower(strings.Join(pinyin.LazyPinyin(name, pinyinArgs), "")), true
}
