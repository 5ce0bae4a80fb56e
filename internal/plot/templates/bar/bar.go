package templates

const BarTemplate = `% Generated on {{.GeneratedDate}}
%
% Chart: {{.Label}}
% Metric: {{.Metric}}
%
\begin{tikzpicture}
	\begin{axis}[
		xbar,
		% title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		width=\textwidth,
		height={{.Height}}cm,
		xmin=0,
		ytick={ {{- range $i, $b := .Bars}}{{if $i}},{{end}}{{$i}}{{end -}} },
		yticklabels={ {{- range $i, $b := .Bars}}{{if $i}},{{end}}{ {{- $b.Label -}} }{{end -}} },
		y dir=reverse,
		bar width=8pt,
		xmajorgrids,
		grid style=dashed,
	]

{{range $i, $b := .Bars}}
% Framework: {{$b.Name}}
\addplot+[xbar, draw={{$b.Color}}, fill={{$b.Color}}] coordinates { ({{$b.Value}},{{$i}}) };
{{end}}
	\end{axis}
\end{tikzpicture}
`

type BarData struct {
	GeneratedDate string
	Label         string
	Metric        string
	Title         string
	XLabel        string
	Height        int
	Bars          []Bar
}

type Bar struct {
	Name  string
	Label string
	Color string
	Value string
}
