package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Generated worksheets follow the tab-name convention
//
//	<KIND> - <LevelName> (<LevelIndex>) - <AreaName>
//
// Workbook singletons (JOB TOTAL, Lists, ProjectData) and the hidden template
// masters keep their bare kind name.

// SheetRef identifies a worksheet by family and position in the project tree.
type SheetRef struct {
	Kind       SheetKind
	LevelName  string
	LevelIndex int
	AreaName   string
	CanopyRef  string // legacy SDU tabs append the canopy reference
}

// sheetNameMaxLen is the Excel tab-name limit.
const sheetNameMaxLen = 31

var knownKinds = []SheetKind{
	KindCanopy, KindCanopyUV, KindFireSupp, KindEbox, KindRecoAir, KindSDU,
	KindMarvel, KindVentClg, KindSpiralDuct, KindSupplyDuct, KindExtractDuct,
	KindContract, KindJobTotal, KindLists, KindProjectData,
}

func kindFromName(s string) SheetKind {
	for _, k := range knownKinds {
		if s == string(k) {
			return k
		}
	}
	return KindUnknown
}

// ParseSheetName resolves a tab name into a SheetRef. Bare kind names parse
// as singletons (empty level and area). An unknown or malformed name returns
// an error so the caller can skip the sheet and report it.
func ParseSheetName(name string) (SheetRef, error) {
	name = strings.TrimSpace(name)
	if !strings.Contains(name, " - ") {
		kind := kindFromName(name)
		if kind == KindUnknown {
			return SheetRef{Kind: KindUnknown}, fmt.Errorf("sheet %q does not match the naming convention", name)
		}
		return SheetRef{Kind: kind}, nil
	}

	segs := strings.Split(name, " - ")
	if len(segs) < 3 {
		return SheetRef{Kind: KindUnknown}, fmt.Errorf("sheet %q: want \"KIND - Level (n) - Area\"", name)
	}

	kind := kindFromName(segs[0])
	if kind == KindUnknown {
		return SheetRef{Kind: KindUnknown}, fmt.Errorf("sheet %q: unknown kind prefix %q", name, segs[0])
	}

	levelName, levelIndex, err := splitLevelSegment(segs[1])
	if err != nil {
		return SheetRef{Kind: KindUnknown}, fmt.Errorf("sheet %q: %w", name, err)
	}

	ref := SheetRef{
		Kind:       kind,
		LevelName:  levelName,
		LevelIndex: levelIndex,
	}

	rest := segs[2:]
	if kind == KindSDU && len(rest) > 1 {
		// Older workbooks name SDU tabs "SDU - Level (n) - Area - CanopyRef".
		ref.CanopyRef = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	ref.AreaName = strings.Join(rest, " - ")
	if ref.AreaName == "" {
		return SheetRef{Kind: KindUnknown}, fmt.Errorf("sheet %q: empty area name", name)
	}
	return ref, nil
}

// splitLevelSegment splits "Ground Floor (1)" into name and index.
func splitLevelSegment(seg string) (string, int, error) {
	seg = strings.TrimSpace(seg)
	open := strings.LastIndex(seg, "(")
	if open < 0 || !strings.HasSuffix(seg, ")") {
		return "", 0, fmt.Errorf("level segment %q missing (index)", seg)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(seg[open+1 : len(seg)-1]))
	if err != nil || idx < 1 {
		return "", 0, fmt.Errorf("level segment %q has a bad index", seg)
	}
	return strings.TrimSpace(seg[:open]), idx, nil
}

// Name renders the canonical tab name. The area segment is trimmed when the
// rendered name would exceed Excel's 31-character tab limit.
func (r SheetRef) Name() string {
	if !r.IsAreaSheet() {
		return string(r.Kind)
	}
	name := fmt.Sprintf("%s - %s (%d) - %s", r.Kind, r.LevelName, r.LevelIndex, r.AreaName)
	if over := len([]rune(name)) - sheetNameMaxLen; over > 0 {
		area := []rune(r.AreaName)
		if over < len(area) {
			area = area[:len(area)-over]
			name = fmt.Sprintf("%s - %s (%d) - %s", r.Kind, r.LevelName, r.LevelIndex, string(area))
		} else {
			name = string([]rune(name)[:sheetNameMaxLen])
		}
	}
	return name
}

// Title renders the in-sheet display title written to the title cell.
func (r SheetRef) Title() string {
	if !r.IsAreaSheet() {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s - %s", r.LevelName, r.AreaName)
}

// AreaKey identifies the area a sheet belongs to; every sheet of one area
// shares it. UV pairing relies on it: "CANOPY (UV) - X" pairs with
// "CANOPY - X" exactly when their area keys match.
func (r SheetRef) AreaKey() string {
	if !r.IsAreaSheet() {
		return ""
	}
	return fmt.Sprintf("%s (%d) - %s", r.LevelName, r.LevelIndex, r.AreaName)
}

// IsAreaSheet reports whether the ref names a per-area sheet rather than a
// workbook singleton or hidden template master.
func (r SheetRef) IsAreaSheet() bool {
	return r.LevelName != "" && r.AreaName != ""
}

// UVCompanion returns the plain canopy ref a UV sheet is diffed against.
func (r SheetRef) UVCompanion() SheetRef {
	companion := r
	companion.Kind = KindCanopy
	return companion
}

// OrderSheets returns tab order for a generated workbook: area groups first
// (sorted by area key, unit sheets before accessory sheets within a group),
// then remaining sheets in their current order, then JOB TOTAL, then Lists.
func OrderSheets(names []string) []string {
	groups := map[string][]string{}
	var keys []string
	var others, jobTotal, lists []string

	for _, name := range names {
		ref, err := ParseSheetName(name)
		switch {
		case err == nil && ref.IsAreaSheet():
			key := ref.AreaKey()
			if _, ok := groups[key]; !ok {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], name)
		case err == nil && ref.Kind == KindJobTotal:
			jobTotal = append(jobTotal, name)
		case err == nil && ref.Kind == KindLists:
			lists = append(lists, name)
		default:
			others = append(others, name)
		}
	}

	sort.Strings(keys)
	ordered := make([]string, 0, len(names))
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			ri, _ := ParseSheetName(group[i])
			rj, _ := ParseSheetName(group[j])
			if ri.Kind.orderRank() != rj.Kind.orderRank() {
				return ri.Kind.orderRank() < rj.Kind.orderRank()
			}
			return group[i] < group[j]
		})
		ordered = append(ordered, group...)
	}
	ordered = append(ordered, others...)
	ordered = append(ordered, jobTotal...)
	ordered = append(ordered, lists...)
	return ordered
}
