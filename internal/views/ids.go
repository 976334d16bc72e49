package views

import "strconv"

func indexedID(prefix string, i int) string { return prefix + "-" + strconv.Itoa(i) }

func stageID(i int) string  { return indexedID("stage", i) }
func groupID(i int) string  { return indexedID("group", i) }
func userID(i int) string   { return indexedID("user", i) }
func roleID(i int) string   { return indexedID("role", i) }
func permID(i int) string   { return indexedID("perm", i) }
func metricID(i int) string { return indexedID("metric", i) }
