package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"node.town/voxnote/capture"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long:  `List every audio input device PortAudio can see. The default device is the one voxnote records from.`,
	Run:   runListDevices,
}

func runListDevices(cmd *cobra.Command, args []string) {
	devices, err := capture.ListInputDevices()
	if err != nil {
		logger.Fatal("list input devices", "error", err)
	}

	if len(devices) == 0 {
		fmt.Println("No input devices found.")
		return
	}

	renderDevices(os.Stdout, devices)
}

func renderDevices(w io.Writer, devices []capture.InputDevice) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Name", "Host API", "Channels", "Sample Rate"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	for _, dev := range devices {
		mark := ""
		if dev.Default {
			mark = "*"
		}
		table.Append([]string{
			mark,
			dev.Name,
			dev.HostAPI,
			fmt.Sprintf("%d", dev.Channels),
			fmt.Sprintf("%.0f Hz", dev.SampleRate),
		})
	}

	table.Render()
}
