/*
Package adt is the file-level API of adtkit.

# Quick Start

Apply a batch file to a device tree and write the result:

	res, err := adt.ApplyFile(ctx, "DeviceTree.bin", "ops.json", nil)

The result is written to DefaultOutput unless ApplyOptions.Output names
another path. With DryRun nothing is written; with Backup an existing
output file is copied to <output>.bak first.

# Inspecting

	blob, err := adt.Load("DeviceTree.bin")
	err = adt.Tree(blob, os.Stdout, "/arm-io", printer.DefaultOptions())
	p, err := adt.GetProperty(blob, "/chosen", "firmware-version")
	report, err := adt.ValidateFile("DeviceTree.bin")

# Comparing

Diff renders both blobs as trees and compares them line by line:

	d, err := adt.Diff(before, after)
	if d.Changed() {
	    fmt.Print(d.Unified())
	}

# Errors

Edit failures carry a kind from pkg/types and can be tested with
errors.Is(err, types.ErrNodeNotFound) and friends. A batch failure is a
*batch.OpError naming the failing entry.
*/
package adt
