package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
%
% Chart: {{.Label}}
% Scenario: {{.Scenario}}
% Metric: {{.Metric}}
% Frameworks: {{len .Plots}}
%
\begin{tikzpicture}
	\begin{axis}[
		% title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		ylabel={ {{.YLabel}} },
		width=\textwidth,
		height=0.75\textwidth,
		xmin={{.XMin}}, xmax={{.XMax}},
		ymin={{.YMin}}, ymax={{.YMax}},
		ymajorgrids,
		grid style=dashed,
		legend columns=2,
		legend pos=outer north east,
		legend style={font=\scriptsize},
	]

{{range .Plots}}
% Framework: {{.Name}} (index {{.Index}})
\addplot+[{{.Style}}]
  coordinates {
{{range .Coordinates}}    {{.}}
{{end}}  };
\addlegendentry{ {{.LegendEntry}} }

{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate string
	Label         string
	Scenario      string
	Metric        string
	Title         string
	XLabel        string
	YLabel        string
	XMin          string
	XMax          string
	YMin          string
	YMax          string
	Plots         []PlotSeries
}

type PlotSeries struct {
	Index       int
	Name        string
	Style       string
	LegendEntry string
	Coordinates []string
}
