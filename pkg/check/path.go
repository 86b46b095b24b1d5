package check

import "strconv"

// rootPath names the value passed to a check.
const rootPath = "root"

// cycleSeparator joins the path of first sight and the path of re-encounter.
const cycleSeparator = " -> "

func fieldPath(parent, key string) string {
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func mapKeyPath(parent string, n int) string {
	return parent + ".<MapKey#" + strconv.Itoa(n) + ">"
}

func mapValuePath(parent string, n int) string {
	return parent + ".<MapValue#" + strconv.Itoa(n) + ">"
}

func setPath(parent string, n int) string {
	return parent + ".<Set#" + strconv.Itoa(n) + ">"
}
